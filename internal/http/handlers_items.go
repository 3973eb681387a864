package http

import (
	"net/http"

	"cashflow/internal/log"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.items.ListExpenses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseDTO(e))
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.items.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(toExpenseDTO(e)).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.toCore()
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.items.CreateExpense(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Expense created",
		log.FieldOperation, log.OpCreate,
		log.FieldItemID, created.ID)
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+created.ID).
		Body(toExpenseDTO(created)).
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.toCore()
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.items.UpdateExpense(r.Context(), r.PathValue("id"), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(toExpenseDTO(updated)).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.items.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleListRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := s.items.ListRevenue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]RevenueDTO, 0, len(revenue))
	for _, rev := range revenue {
		out = append(out, toRevenueDTO(rev))
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleGetRevenue(w http.ResponseWriter, r *http.Request) {
	rev, err := s.items.GetRevenue(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(toRevenueDTO(rev)).Write(w)
}

func (s *Server) handleCreateRevenue(w http.ResponseWriter, r *http.Request) {
	var req RevenueRequest
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rev, err := req.toCore()
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.items.CreateRevenue(r.Context(), rev)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Revenue created",
		log.FieldOperation, log.OpCreate,
		log.FieldItemID, created.ID)
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/revenue/"+created.ID).
		Body(toRevenueDTO(created)).
		Write(w)
}

func (s *Server) handleUpdateRevenue(w http.ResponseWriter, r *http.Request) {
	var req RevenueRequest
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rev, err := req.toCore()
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.items.UpdateRevenue(r.Context(), r.PathValue("id"), rev)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(toRevenueDTO(updated)).Write(w)
}

func (s *Server) handleDeleteRevenue(w http.ResponseWriter, r *http.Request) {
	if err := s.items.DeleteRevenue(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
