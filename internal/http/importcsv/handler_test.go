package importcsv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/encoding"
	"github.com/MrJamesThe3rd/invoicer/internal/importer"
)

type fakeImporter struct {
	parseErr error
	storeErr error
	stored   bool
}

func (f *fakeImporter) Parse(kind importer.Kind, r io.Reader) (*importer.Batch, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}

	_, _ = io.ReadAll(r)

	return &importer.Batch{
		Kind:    kind,
		Charset: encoding.UTF8,
		Clients: []client.CreateParams{{Name: "Acme"}, {Name: "Globex"}},
	}, nil
}

func (f *fakeImporter) Store(_ context.Context, b *importer.Batch) (int, error) {
	f.stored = true
	return b.Len(), f.storeErr
}

func upload(t *testing.T, fields map[string]string, withFile bool) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}

	if withFile {
		fw, err := mw.CreateFormFile("file", "clients.csv")
		if err != nil {
			t.Fatal(err)
		}

		_, _ = fw.Write([]byte("name;email\nAcme;ap@acme.test\nGlobex;\n"))
	}

	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Import(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		withFile   bool
		importer   *fakeImporter
		wantStatus int
		wantBody   string
		wantStored bool
	}{
		{
			name:       "stored",
			fields:     map[string]string{"kind": "clients"},
			withFile:   true,
			importer:   &fakeImporter{},
			wantStatus: http.StatusCreated,
			wantBody:   `"imported":2`,
			wantStored: true,
		},
		{
			name:       "dry run parses only",
			fields:     map[string]string{"kind": "clients", "dry_run": "true"},
			withFile:   true,
			importer:   &fakeImporter{},
			wantStatus: http.StatusOK,
			wantBody:   `"parsed":2`,
		},
		{
			name:       "unknown kind",
			fields:     map[string]string{"kind": "invoices"},
			withFile:   true,
			importer:   &fakeImporter{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing file",
			fields:     map[string]string{"kind": "items"},
			importer:   &fakeImporter{},
			wantStatus: http.StatusBadRequest,
			wantBody:   "file field is required",
		},
		{
			name:       "parse error",
			fields:     map[string]string{"kind": "items"},
			withFile:   true,
			importer:   &fakeImporter{parseErr: errors.New("row 3: invalid unit price")},
			wantStatus: http.StatusBadRequest,
			wantBody:   "row 3",
		},
		{
			name:       "store error",
			fields:     map[string]string{"kind": "clients"},
			withFile:   true,
			importer:   &fakeImporter{storeErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantStored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Route("/import", NewHandler(tt.importer).Routes)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, upload(t, tt.fields, tt.withFile))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, tt.wantStored, tt.importer.stored)
		})
	}
}
