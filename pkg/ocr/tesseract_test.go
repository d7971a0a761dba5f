package ocr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDigest(t *testing.T) {
	img := []byte("fake png bytes")

	d1 := Digest(img)
	d2 := Digest(img)

	assert.Equal(t, d1, d2)
	assert.Equal(t, 16, len(d1))
	assert.NotEqual(t, d1, Digest([]byte("other")))
}

func TestExtract(t *testing.T) {
	var gotOptions, gotFile, gotName string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tesseract", r.URL.Path)

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotOptions = r.FormValue("options")

		f, hdr, err := r.FormFile("file")
		if err == nil {
			b, _ := io.ReadAll(f)
			gotFile = string(b)
			gotName = hdr.Filename
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{
				"stdout": "  Your OTP is 4521\n",
				"stderr": "",
			},
		})
	}))
	defer srv.Close()

	client := NewTesseractClient(srv.URL + "/")
	text, err := client.Extract(context.Background(), []byte("png"), "shot.png")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Your OTP is 4521", text)
	assert.Equal(t, `{"languages":["eng"]}`, gotOptions)
	assert.Equal(t, "png", gotFile)
	assert.Equal(t, "shot.png", gotName)
}

func TestExtract_Errors(t *testing.T) {
	blank := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"stdout":"   \n"}}`))
	}))
	defer blank.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer failing.Close()

	_, err := NewTesseractClient(blank.URL).Extract(context.Background(), []byte("png"), "")
	assert.Equal(t, ErrNoText, err)

	_, err = NewTesseractClient(failing.URL).Extract(context.Background(), []byte("png"), "")
	assert.NotEqual(t, nil, err)

	_, err = NewTesseractClient(blank.URL).Extract(context.Background(), nil, "")
	assert.Equal(t, ErrEmptyImage, err)

	_, err = NewTesseractClient(blank.URL).Extract(context.Background(), make([]byte, MaxImageBytes+1), "")
	assert.Equal(t, ErrImageTooLarge, err)
}
