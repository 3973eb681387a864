package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// Config selects the target spreadsheet and how to authenticate against it.
// Service account credentials take precedence over an OAuth client + token.
type Config struct {
	SpreadsheetID string
	// SheetName is the tab base name; the forecast start year is prefixed.
	SheetName string
	Currency  string

	ServiceAccountJSON string
	ServiceAccountFile string

	OAuthClientJSON string
	OAuthClientFile string
	OAuthTokenJSON  string
	OAuthTokenFile  string
}

// Exporter writes forecast reports into a Google Sheets tab.
type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
	currency      string
}

var _ ports.ReportExporter = (*Exporter)(nil)

// New creates an exporter authenticated with the credentials in cfg.
func New(ctx context.Context, cfg Config) (*Exporter, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	opt, err := clientOption(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	base := strings.TrimSpace(cfg.SheetName)
	if base == "" {
		base = "Forecast"
	}
	slog.InfoContext(ctx, "Google Sheets exporter ready",
		"spreadsheet_id", spreadsheetID,
		"sheet", base)

	return &Exporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     base,
		currency:      cfg.Currency,
	}, nil
}

func clientOption(ctx context.Context, cfg Config) (goption.ClientOption, error) {
	saJSON, err := inlineOrFile(cfg.ServiceAccountJSON, cfg.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account: %w", err)
	}
	if len(saJSON) > 0 {
		slog.InfoContext(ctx, "Using service account credentials", "credentials_size", len(saJSON))
		return goption.WithCredentialsJSON(saJSON), nil
	}

	clientJSON, err := inlineOrFile(cfg.OAuthClientJSON, cfg.OAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth client: %w", err)
	}
	tokenJSON, err := inlineOrFile(cfg.OAuthTokenJSON, cfg.OAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token: %w", err)
	}
	if len(clientJSON) == 0 || len(tokenJSON) == 0 {
		return nil, errors.New("missing credentials (set a service account or an oauth client and token)")
	}

	oc, err := goauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokenJSON, &tok); err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}
	slog.InfoContext(ctx, "Using oauth token credentials", "has_refresh_token", tok.RefreshToken != "")
	return goption.WithTokenSource(oc.TokenSource(ctx, &tok)), nil
}

func inlineOrFile(inline, path string) ([]byte, error) {
	if s := strings.TrimSpace(inline); s != "" {
		return []byte(s), nil
	}
	if p := strings.TrimSpace(path); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}

// ExportForecast replaces the contents of the year tab with the report.
// When the tab already holds the same rows no write is issued.
func (e *Exporter) ExportForecast(ctx context.Context, report core.ForecastReport) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	sheet := yearPrefixedName(e.sheetBase, report.StartDate.Year())
	rows := reportRows(report, e.currency)
	ref := fmt.Sprintf("%s!A1:%s%d", sheet, lastColumn, len(rows))

	current, err := e.svc.Spreadsheets.Values.Get(e.spreadsheetID, sheet+"!A:"+lastColumn).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", sheet, err)
	}
	if rowsEqual(current.Values, rows) {
		slog.DebugContext(ctx, "Forecast sheet unchanged", "ref", ref)
		return ref, nil
	}

	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, sheet+"!A:"+lastColumn, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear %s: %w", sheet, err)
	}

	vr := &gsheet.ValueRange{Values: rows}
	if _, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, ref, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("update %s: %w", ref, err)
	}
	return ref, nil
}
