package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stylerack/stylerack/internal/api"
	"github.com/stylerack/stylerack/internal/composer"
	"github.com/stylerack/stylerack/internal/database"
	"github.com/stylerack/stylerack/internal/models"
	"github.com/stylerack/stylerack/internal/processing"
	"github.com/stylerack/stylerack/internal/storage"
)

const testUserID = "test-user"

// stubProcessor fakes the background-removal service: it echoes a processed
// path and a fixed predicted category.
type stubProcessor struct {
	category string
	fail     bool
}

func (s *stubProcessor) Process(ctx context.Context, filename string, image io.Reader) (*processing.Result, error) {
	if s.fail {
		return nil, processing.ErrProcessingFailed
	}
	return &processing.Result{
		ImagePath: "/static/" + s.category + "/" + filename,
		Category:  s.category,
	}, nil
}

type testServer struct {
	Server    *httptest.Server
	DB        *database.DB
	ItemRepo  *database.ItemRepository
	Processor *stubProcessor
	Cleanup   func()
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	db, err := database.NewDB(database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(tmpDir, "test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	uploadDir := filepath.Join(tmpDir, "uploads")
	localStorage, err := storage.NewLocalStorage(uploadDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	itemRepo := database.NewItemRepository(db, database.DeletionPolicyOrphan)
	stub := &stubProcessor{category: "shortsleeve"}

	app := &api.App{
		Storage:       localStorage,
		DB:            db,
		ItemRepo:      itemRepo,
		OutfitRepo:    database.NewOutfitRepository(db),
		Processor:     stub,
		Assembler:     composer.NewAssembler(composer.RequireAnySlot),
		MaxUploadSize: 10 << 20,
		UploadDir:     uploadDir,
		Logger:        zerolog.Nop(),
	}

	server := httptest.NewServer(api.NewRouter(app))

	return &testServer{
		Server:    server,
		DB:        db,
		ItemRepo:  itemRepo,
		Processor: stub,
		Cleanup: func() {
			server.Close()
			db.Close()
		},
	}
}

// doJSON performs an authenticated JSON request against the test server.
func (ts *testServer) doJSON(t *testing.T, method, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("X-User-ID", testUserID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	resp.Body.Close()
	return out
}

// createMultipartUpload builds an image upload request body.
func createMultipartUpload(fieldName, filename string, content []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, filename),
	}
	header["Content-Type"] = []string{"image/jpeg"}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

// seedItem inserts a wardrobe item directly through the repository.
func (ts *testServer) seedItem(t *testing.T, category models.Category, color models.Color) *models.ClothingItem {
	t.Helper()

	item := models.NewClothingItem(testUserID, "/uploads/"+string(category)+".jpg",
		"/uploads/"+string(category)+"_orig.jpg", category, color)
	if err := ts.ItemRepo.Insert(context.Background(), item); err != nil {
		t.Fatalf("Failed to seed item: %v", err)
	}
	return item
}

func countRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
