package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// maxUploadSize bounds a single embedded attachment. Uploads are stored
// inline as data URIs, so they count against the storage quota.
const maxUploadSize = 4 * 1024 * 1024

// handleUpload converts a multipart file into a data URI the caller can
// embed in a product image, employee stamp or document record.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonErr(w, "File too large or malformed upload", 400)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonErr(w, "file field is required", 400)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonErr(w, "Failed to read upload", 500)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	uri := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	jsonResp(w, map[string]interface{}{
		"name": header.Filename,
		"type": contentType,
		"size": len(data),
		"data": uri,
	})
}
