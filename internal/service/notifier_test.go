package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"employee-directory/internal/config"
	"employee-directory/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, model.EmployeeEvent) error { return f.err }

func TestNotifiers_FanOut(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	boom := errors.New("boom")
	var nilSheet *SheetNotifier

	ns := Notifiers{a, nil, nilSheet, failingNotifier{err: boom}, b}
	err := ns.Notify(context.Background(), model.EmployeeEvent{Action: model.EmployeeCreated, EmployeeID: "1"})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, a.snapshot(), 1)
	assert.Len(t, b.snapshot(), 1)
}

func TestRedisNotifier_PayloadOmitsImage(t *testing.T) {
	e := &model.Employee{ID: "e1", Name: "Ann", Image: []byte("photo")}
	payload, err := redisPayload(model.EmployeeEvent{Action: model.EmployeeCreated, EmployeeID: "e1", Employee: e})
	require.NoError(t, err)

	var decoded model.EmployeeEvent
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, model.EmployeeCreated, decoded.Action)
	assert.Equal(t, "Ann", decoded.Employee.Name)
	assert.Empty(t, decoded.Employee.Image)
	assert.Equal(t, []byte("photo"), e.Image, "source event must not be mutated")
}

func TestRedisNotifier_Channel(t *testing.T) {
	n := NewRedisNotifier(nil, "")
	assert.Equal(t, "employees.deleted", n.Channel(model.EmployeeDeleted))

	n = NewRedisNotifier(nil, "staff")
	assert.Equal(t, "staff.updated", n.Channel(model.EmployeeUpdated))
}

func TestRedisNotifier_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := NewRedisNotifier(rdb, "employees").Notify(ctx, model.EmployeeEvent{Action: model.EmployeeDeleted, EmployeeID: "x"})
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	rdb := NewRedisClient(config.RedisConfig{Addr: "cache:6380", DB: 2})
	defer rdb.Close()

	assert.Equal(t, "cache:6380", rdb.Options().Addr)
	assert.Equal(t, 2, rdb.Options().DB)
}

// fakeSheets serves the subset of the Sheets v4 values API the notifier uses
// and keeps column A of every row so writes can be checked afterwards.
type fakeSheets struct {
	mu       sync.Mutex
	ids      [][]interface{}
	requests []string

	// appendDelay holds appends back before they land.
	appendDelay time.Duration
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if strings.HasSuffix(path, ":append") {
		time.Sleep(f.appendDelay)
	}

	var body sheets.ValueRange
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+path)

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "!A2:A"):
		_ = json.NewEncoder(w).Encode(map[string]any{"range": "Employees!A2:A", "values": f.ids})
		return
	case strings.HasSuffix(path, ":append"):
		for _, row := range body.Values {
			f.ids = append(f.ids, row[:1])
		}
	case strings.HasSuffix(path, ":clear"):
		if i, ok := f.rowIndex(path); ok {
			f.ids[i] = []interface{}{}
		}
	case r.Method == http.MethodPut:
		if i, ok := f.rowIndex(path); ok && len(body.Values) > 0 {
			f.ids[i] = body.Values[0][:1]
		}
	}
	_, _ = w.Write([]byte(`{}`))
}

// rowIndex maps a ".../Sheet!A<n>:J<n>" path to an index into ids.
func (f *fakeSheets) rowIndex(path string) (int, bool) {
	_, rng, ok := strings.Cut(path, "!")
	if !ok {
		return 0, false
	}
	var row int
	if _, err := fmt.Sscanf(rng, "A%d:", &row); err != nil || row < 2 || row-2 >= len(f.ids) {
		return 0, false
	}
	return row - 2, true
}

// rowsFor counts the rows whose id column holds id.
func (f *fakeSheets) rowsFor(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, row := range f.ids {
		if len(row) > 0 && fmt.Sprint(row[0]) == id {
			n++
		}
	}
	return n
}

func (f *fakeSheets) lastRequest() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestSheetNotifier(t *testing.T, fake *fakeSheets) *SheetNotifier {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return newSheetNotifier(svc, "sheet-id", "Employees")
}

func TestSheetNotifier_AppendsNewEmployee(t *testing.T) {
	fake := &fakeSheets{ids: [][]interface{}{{"other"}}}
	n := newTestSheetNotifier(t, fake)

	err := n.Notify(context.Background(), model.EmployeeEvent{
		Action: model.EmployeeCreated, EmployeeID: "e1", Employee: &model.Employee{ID: "e1", Name: "Ann"},
	})
	require.NoError(t, err)
	assert.Equal(t, "POST /v4/spreadsheets/sheet-id/values/Employees!A2:J:append", fake.lastRequest())
}

func TestSheetNotifier_UpdatesExistingRow(t *testing.T) {
	fake := &fakeSheets{ids: [][]interface{}{{"other"}, {"e1"}}}
	n := newTestSheetNotifier(t, fake)

	err := n.Notify(context.Background(), model.EmployeeEvent{
		Action: model.EmployeeUpdated, EmployeeID: "e1", Employee: &model.Employee{ID: "e1", Name: "Ann"},
	})
	require.NoError(t, err)
	assert.Equal(t, "PUT /v4/spreadsheets/sheet-id/values/Employees!A3:J3", fake.lastRequest())
}

func TestSheetNotifier_ClearsDeletedRow(t *testing.T) {
	fake := &fakeSheets{ids: [][]interface{}{{"e1"}}}
	n := newTestSheetNotifier(t, fake)

	err := n.Notify(context.Background(), model.EmployeeEvent{Action: model.EmployeeDeleted, EmployeeID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, "POST /v4/spreadsheets/sheet-id/values/Employees!A2:J2:clear", fake.lastRequest())
}

func TestSheetNotifier_DeleteUnknownIsNoop(t *testing.T) {
	fake := &fakeSheets{}
	n := newTestSheetNotifier(t, fake)

	err := n.Notify(context.Background(), model.EmployeeEvent{Action: model.EmployeeDeleted, EmployeeID: "nope"})
	require.NoError(t, err)
	assert.Len(t, fake.requests, 1)
}

func TestNewSheetNotifier(t *testing.T) {
	n, err := NewSheetNotifier(context.Background(), config.SheetsConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, n)
	assert.NoError(t, n.Notify(context.Background(), model.EmployeeEvent{}))

	_, err = NewSheetNotifier(context.Background(), config.SheetsConfig{Enabled: true, CredentialPath: "/nonexistent/creds.json"})
	assert.Error(t, err)
}
