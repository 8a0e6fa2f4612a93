package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"employee-directory/internal/config"
	"employee-directory/internal/model"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetNotifier mirrors the directory into a Google Sheet, one row per
// employee keyed by id in column A. A nil *SheetNotifier is a no-op.
type SheetNotifier struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetNotifier returns nil, nil when sync is disabled.
func NewSheetNotifier(ctx context.Context, cfg config.SheetsConfig) (*SheetNotifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	b, err := os.ReadFile(cfg.CredentialPath)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("load sheets credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, err
	}

	return newSheetNotifier(srv, cfg.SpreadsheetID, cfg.SheetName), nil
}

func newSheetNotifier(srv *sheets.Service, spreadsheetID, sheetName string) *SheetNotifier {
	return &SheetNotifier{service: srv, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

func (s *SheetNotifier) Notify(ctx context.Context, event model.EmployeeEvent) error {
	if s == nil {
		return nil
	}

	row, found, err := s.findRow(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	switch event.Action {
	case model.EmployeeDeleted:
		if !found {
			return nil
		}
		_, err = s.service.Spreadsheets.Values.Clear(s.spreadsheetID, s.rowRange(row), &sheets.ClearValuesRequest{}).
			Context(ctx).Do()
	default:
		if event.Employee == nil {
			return nil
		}
		values := &sheets.ValueRange{Values: [][]interface{}{employeeRow(event.Employee)}}
		if found {
			_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, s.rowRange(row), values).
				ValueInputOption("USER_ENTERED").Context(ctx).Do()
		} else {
			_, err = s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName+"!A2:J", values).
				ValueInputOption("USER_ENTERED").Context(ctx).Do()
		}
	}
	if err != nil {
		return fmt.Errorf("sync employee %s to sheet: %w", event.EmployeeID, err)
	}
	return nil
}

// findRow returns the 1-based sheet row holding id.
func (s *SheetNotifier) findRow(ctx context.Context, id string) (int, bool, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName+"!A2:A").Context(ctx).Do()
	if err != nil {
		return 0, false, fmt.Errorf("read sheet ids: %w", err)
	}
	for i, row := range resp.Values {
		if len(row) > 0 && fmt.Sprint(row[0]) == id {
			return i + 2, true, nil
		}
	}
	return 0, false, nil
}

func (s *SheetNotifier) rowRange(row int) string {
	return fmt.Sprintf("%s!A%d:J%d", s.sheetName, row, row)
}

func employeeRow(e *model.Employee) []interface{} {
	return []interface{}{
		e.ID,
		e.Name,
		e.Email,
		e.Mobile,
		e.Designation,
		e.Gender,
		e.Course,
		e.CreatedDate.Format(time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	}
}
