package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newTestHuggingFace(t *testing.T, handler http.HandlerFunc) *HuggingFaceClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewHuggingFaceClient("test-key", "test/model")
	c.baseURL = srv.URL + "/models/"
	c.httpClient = srv.Client()
	return c
}

func TestHuggingFaceClassify(t *testing.T) {
	var gotPath, gotAuth, gotInput string
	c := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotInput = body["inputs"]
		w.Write([]byte(`[[{"label":"negative","score":0.85},{"label":"neutral","score":0.1},{"label":"positive","score":0.05}]]`))
	})

	scores, err := c.Classify(context.Background(), "ECB holds rates amid slowdown fears")

	assert.Equal(t, nil, err)
	assert.Equal(t, "/models/test/model", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "ECB holds rates amid slowdown fears", gotInput)
	assert.Equal(t, 3, len(scores))
	assert.Equal(t, Score{Label: "negative", Score: 0.85}, scores[0])
}

func TestHuggingFaceClassify_ModelLoading(t *testing.T) {
	c := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	})

	_, err := c.Classify(context.Background(), "text")

	assert.Equal(t, true, errors.Is(err, ErrUnavailable))
}

func TestHuggingFaceClassify_ServerError(t *testing.T) {
	c := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Classify(context.Background(), "text")

	assert.Equal(t, true, errors.Is(err, ErrUnavailable))
}

func TestHuggingFaceClassify_Malformed(t *testing.T) {
	c := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := c.Classify(context.Background(), "text")

	assert.Equal(t, true, errors.Is(err, ErrMalformed))
}

func TestHuggingFaceClassify_NoKey(t *testing.T) {
	c := NewHuggingFaceClient("", "")

	_, err := c.Classify(context.Background(), "text")

	assert.Equal(t, ErrNotConfigured, err)
	assert.Equal(t, DefaultHuggingFaceModel, c.model)
}
