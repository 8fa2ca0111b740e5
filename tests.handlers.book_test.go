package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestAPIHandler(bs BookServiceProvider, cs CartServiceProvider) *APIHandler {
	clock := NewMockClocker()
	return NewAPIHandler(zap.NewNop(), nil, &Statistics{started: clock.Now()}, clock,
		NewIDsHandler(), bs, cs)
}

// TestStatusHandler ensures api handler can provides its status.
func TestStatusHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api := newTestAPIHandler(nil, nil)
	api.Status(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	m := make(map[string]interface{})
	err = json.Unmarshal(data, &m)
	assert.NoError(t, err)

	_, ok := m["requestid"]
	assert.True(t, ok)

	v, ok := m["status"]
	assert.True(t, ok)
	assert.Equal(t, "up & running since 0 mins", v)

	v, ok = m["message"]
	assert.True(t, ok)
	assert.Equal(t, v, "Hello. BookHaven cart api is available. Enjoy :)")
}

// TestCreateBookHandler ensures api handler can create a book.
//
//nolint:funlen
func TestCreateBookHandler(t *testing.T) {
	mockRepo := &MockBookStorage{
		AddFunc: func(ctx context.Context, book Book) (Book, error) {
			book.ID = 7
			return book, nil
		},
	}
	bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
	api := newTestAPIHandler(bs, nil)

	t.Run("should pass: valid payload", func(t *testing.T) {
		book := Book{
			Title:       "Test book title",
			Description: "Test book description",
			Author:      "Jerome Amon",
			Price:       decimal.RequireFromString("10.00"),
		}
		payload, err := json.Marshal(book)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)

		_, ok := resultMap["requestid"]
		assert.True(t, ok)

		v, ok := resultMap["status"]
		assert.True(t, ok)
		assert.Equal(t, float64(http.StatusCreated), v)

		v, ok = resultMap["message"]
		assert.True(t, ok)
		assert.Equal(t, "Book created successfully.", v)

		v, ok = resultMap["data"]
		assert.True(t, ok)

		bookMap, ok := v.(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, float64(7), bookMap["id"])
		assert.Equal(t, "Test book title", bookMap["title"])
		assert.Equal(t, "Test book description", bookMap["description"])
		assert.Equal(t, "Jerome Amon", bookMap["author"])
		assert.Equal(t, "10", bookMap["price"])

		assert.NotEmpty(t, bookMap["createdAt"])
		assert.NotEmpty(t, bookMap["updatedAt"])
	})

	t.Run("should fail: storage insertion failure", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				return book, errors.New("storage failure")
			},
		}
		bs = NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		api = newTestAPIHandler(bs, nil)

		book := Book{
			Title:       "Test book title",
			Description: "Test book description",
			Author:      "Jerome Amon",
			Price:       decimal.RequireFromString("10.00"),
		}

		payload, err := json.Marshal(book)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)

		_, ok := resultMap["requestid"]
		assert.True(t, ok)

		v, ok := resultMap["status"]
		assert.True(t, ok)
		assert.Equal(t, float64(http.StatusInternalServerError), v)

		v, ok = resultMap["message"]
		assert.True(t, ok)
		assert.Equal(t, "failed to create the book", v)

		v, ok = resultMap["data"]
		assert.True(t, ok)
		bookMap, ok := v.(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "Test book title", bookMap["title"])
		assert.Equal(t, "Jerome Amon", bookMap["author"])
		assert.NotEmpty(t, bookMap["createdAt"])
		assert.NotEmpty(t, bookMap["updatedAt"])
	})

	t.Run("should fail: invalid payload", func(t *testing.T) {
		jsonStringPayload := `{"title":1, "description":"Test book description", "author":"Jerome Amon", "price":"10.00"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer([]byte(jsonStringPayload)))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)
		assert.Equal(t, "failed to create the book", resultMap["message"])
		assert.Equal(t, float64(http.StatusBadRequest), resultMap["status"])
	})

	t.Run("should fail: required field in payload", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  []byte
			expected string
		}{
			{
				name:     "empty title",
				payload:  []byte(`{"title":"", "description":"Test book description", "author":"Jerome Amon", "price":"10.00"}`),
				expected: "title is required",
			},
			{
				name:     "missing title",
				payload:  []byte(`{"description":"Test book description", "author":"Jerome Amon", "price":"10.00"}`),
				expected: "title is required",
			},
			{
				name:     "missing author",
				payload:  []byte(`{"title":"Test book title", "description":"Test book description", "price":"10.00"}`),
				expected: "author is required",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(tc.payload))
				w := httptest.NewRecorder()
				api.CreateBook(w, req, httprouter.Params{})
				res := w.Result()
				defer res.Body.Close()
				assert.Equal(t, http.StatusBadRequest, res.StatusCode)
				assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
				data, err := io.ReadAll(res.Body)
				assert.NoError(t, err)
				resultMap := make(map[string]interface{})
				err = json.Unmarshal(data, &resultMap)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, resultMap["data"])
			})
		}
	})
}

func TestGetOneBook_InvalidID(t *testing.T) {
	api := newTestAPIHandler(nil, nil)
	for _, id := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/books/"+id, nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: id}})
		res := w.Result()
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	}
}

func TestDeleteOneBook_MissingBook(t *testing.T) {
	mockRepo := &MockBookStorage{
		DeleteFunc: func(ctx context.Context, id int) error {
			return ErrBookNotFound
		},
	}

	bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
	api := newTestAPIHandler(bs, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/books/42", nil)
	w := httptest.NewRecorder()
	api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "42"}})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	resultMap := make(map[string]interface{})
	err = json.Unmarshal(data, &resultMap)
	assert.NoError(t, err)
	assert.Equal(t, "book does not exist", resultMap["message"])
	assert.Equal(t, float64(http.StatusNotFound), resultMap["status"])
}
