package main

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
)

func uploadRequest(t *testing.T, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	fw.Write(content)
	mw.Close()

	req := httptest.NewRequest("POST", "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newMux().ServeHTTP(w, req)
	return w
}

func TestUploadReturnsDataURI(t *testing.T) {
	setupTestApp(t)

	png := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("x", 64))
	w := uploadRequest(t, "file", "stamp.png", png)
	if w.Code != 200 {
		t.Fatalf("Upload = %d: %s", w.Code, w.Body)
	}

	var resp map[string]interface{}
	decodeData(t, w, &resp)
	data, _ := resp["data"].(string)
	if !strings.HasPrefix(data, "data:image/png;base64,") {
		t.Errorf("Data URI = %.40q", data)
	}
	if resp["name"] != "stamp.png" {
		t.Errorf("Name = %v", resp["name"])
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	setupTestApp(t)

	w := uploadRequest(t, "wrong", "x.bin", []byte("abc"))
	if w.Code != 400 {
		t.Errorf("Upload without file field = %d, want 400", w.Code)
	}
}

func TestUploadTooLarge(t *testing.T) {
	setupTestApp(t)

	w := uploadRequest(t, "file", "big.bin", make([]byte, maxUploadSize+1))
	if w.Code != 400 {
		t.Errorf("Oversized upload = %d, want 400", w.Code)
	}
}
