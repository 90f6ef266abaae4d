package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plastinin/receiptgate/internal/adapter/ocr"
	"github.com/plastinin/receiptgate/internal/adapter/tempstore"
	"github.com/plastinin/receiptgate/internal/config"
	"github.com/plastinin/receiptgate/internal/usecase"
	"go.uber.org/zap"
)

// ocrEnv собранный конвейер с заглушкой провайдера и счётчиком обращений
type ocrEnv struct {
	handler  *OCRHandler
	tempDir  string
	upstream *httptest.Server
	calls    *int32
}

func newOCREnv(t *testing.T, maxSize int64, timeout time.Duration, provider http.HandlerFunc) *ocrEnv {
	t.Helper()

	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		provider(w, r)
	}))
	t.Cleanup(upstream.Close)

	tempDir := t.TempDir()
	store, err := tempstore.New(tempDir)
	if err != nil {
		t.Fatalf("tempstore.New: %v", err)
	}

	client := ocr.NewClient(config.OCRConfig{
		BaseURL:        upstream.URL,
		APIKey:         "test-key",
		RequestTimeout: timeout,
	}, zap.NewNop())

	relayUC := usecase.NewRelayUseCase(store, client, maxSize, zap.NewNop())

	return &ocrEnv{
		handler:  NewOCRHandler(relayUC, maxSize, zap.NewNop()),
		tempDir:  tempDir,
		upstream: upstream,
		calls:    &calls,
	}
}

func (e *ocrEnv) upstreamCalls() int32 {
	return atomic.LoadInt32(e.calls)
}

// assertTempDirEmpty инвариант: после ответа временных файлов не остаётся
func (e *ocrEnv) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(e.tempDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Name()
		}
		t.Errorf("temp dir not empty after response: %v", names)
	}
}

// newUploadRequest собирает multipart запрос с одним файловым полем
func newUploadRequest(t *testing.T, fieldName, fileName, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/ocr/receipt", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeEnvelope(t *testing.T, body io.Reader) (ok bool, data map[string]any, errField any) {
	t.Helper()

	var envelope struct {
		OK    bool           `json:"ok"`
		Data  map[string]any `json:"data"`
		Error any            `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.OK, envelope.Data, envelope.Error
}

func TestRecognizeSuccess(t *testing.T) {
	env := newOCREnv(t, 10<<20, 5*time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"text":"итого 459.90"}}`))
	})

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, newUploadRequest(t, "file", "receipt.jpg", "image/jpeg", []byte("jpeg bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	ok, data, _ := decodeEnvelope(t, rec.Body)
	if !ok {
		t.Error("ok = false")
	}
	if data["text"] != "итого 459.90" {
		t.Errorf("text = %v", data["text"])
	}
	if data["raw"] == nil {
		t.Error("raw body missing from response")
	}

	env.assertTempDirEmpty(t)
}

func TestRecognizeMissingFile(t *testing.T) {
	env := newOCREnv(t, 10<<20, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	// Поле с другим именем — файла "file" нет
	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, newUploadRequest(t, "attachment", "receipt.jpg", "image/jpeg", []byte("x")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	ok, _, errField := decodeEnvelope(t, rec.Body)
	if ok || errField == nil {
		t.Errorf("want ok=false with error, got ok=%v err=%v", ok, errField)
	}
	if env.upstreamCalls() != 0 {
		t.Errorf("provider called %d times for request without file", env.upstreamCalls())
	}
	env.assertTempDirEmpty(t)
}

func TestRecognizeUnsupportedType(t *testing.T) {
	env := newOCREnv(t, 10<<20, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, newUploadRequest(t, "file", "notes.txt", "text/plain", []byte("not an image")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if env.upstreamCalls() != 0 {
		t.Errorf("provider called %d times for rejected type", env.upstreamCalls())
	}
	env.assertTempDirEmpty(t)
}

func TestRecognizeTooLarge(t *testing.T) {
	env := newOCREnv(t, 1024, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, newUploadRequest(t, "file", "big.jpg", "image/jpeg", bytes.Repeat([]byte("a"), 2048)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
	if env.upstreamCalls() != 0 {
		t.Errorf("provider called %d times for oversize upload", env.upstreamCalls())
	}
	env.assertTempDirEmpty(t)
}

func TestRecognizeUpstreamErrorPassthrough(t *testing.T) {
	env := newOCREnv(t, 10<<20, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"msg":"boom"}`))
	})

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, newUploadRequest(t, "file", "receipt.png", "image/png", []byte("png bytes")))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want provider status passthrough", rec.Code)
	}

	ok, _, errField := decodeEnvelope(t, rec.Body)
	if ok {
		t.Error("ok = true for upstream error")
	}
	// Тело провайдера отдаётся клиенту без изменений
	errObj, isMap := errField.(map[string]any)
	if !isMap || errObj["msg"] != "boom" {
		t.Errorf("error field = %v, want verbatim provider body", errField)
	}

	env.assertTempDirEmpty(t)
}

func TestRecognizeUpstreamTimeout(t *testing.T) {
	env := newOCREnv(t, 10<<20, 50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"text":"too late"}`))
	})

	rec := httptest.NewRecorder()
	env.handler.Recognize(rec, newUploadRequest(t, "file", "receipt.jpg", "image/jpeg", []byte("jpeg bytes")))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 on transport failure", rec.Code)
	}
	ok, _, _ := decodeEnvelope(t, rec.Body)
	if ok {
		t.Error("ok = true on timeout")
	}

	// Таймаут не освобождает от уборки
	env.assertTempDirEmpty(t)
}

func TestRecognizeIdempotentNormalization(t *testing.T) {
	env := newOCREnv(t, 10<<20, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"text":"C"}}`))
	})

	var texts []string
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		env.handler.Recognize(rec, newUploadRequest(t, "file", "receipt.jpg", "image/jpeg", []byte("same bytes")))
		if rec.Code != http.StatusOK {
			t.Fatalf("run %d: status = %d", i, rec.Code)
		}
		_, data, _ := decodeEnvelope(t, rec.Body)
		texts = append(texts, data["text"].(string))
	}

	for i := 1; i < len(texts); i++ {
		if texts[i] != texts[0] {
			t.Errorf("run %d: text %q != %q", i, texts[i], texts[0])
		}
	}
}

func TestRecognizeConcurrentUploads(t *testing.T) {
	// Провайдер возвращает содержимое файла как текст: так видно,
	// что параллельные запросы не перепутали файлы
	env := newOCREnv(t, 10<<20, 5*time.Second, func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		resp, _ := json.Marshal(map[string]any{"text": string(content)})
		w.Write(resp)
	})

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			content := fmt.Sprintf("upload-%d", n)
			rec := httptest.NewRecorder()
			env.handler.Recognize(rec, newUploadRequest(t, "file", fmt.Sprintf("r%d.jpg", n), "image/jpeg", []byte(content)))

			if rec.Code != http.StatusOK {
				errs <- fmt.Errorf("worker %d: status %d", n, rec.Code)
				return
			}

			var envelope struct {
				Data struct {
					Text string `json:"text"`
				} `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
				errs <- fmt.Errorf("worker %d: decode: %v", n, err)
				return
			}
			if envelope.Data.Text != content {
				errs <- fmt.Errorf("worker %d: got text %q, want %q", n, envelope.Data.Text, content)
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	env.assertTempDirEmpty(t)
}
