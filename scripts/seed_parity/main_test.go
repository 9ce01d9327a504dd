package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquivalentIgnoresVolatileKeys(t *testing.T) {
	a := []byte(`{"data":{"metrics":{"totalStudents":10},"generatedAt":"2024-06-03T08:00:00Z"},"meta":{"processing_time_ms":3}}`)
	b := []byte(`{"data":{"metrics":{"totalStudents":10},"generatedAt":"2024-06-04T09:00:00Z"}}`)
	assert.True(t, equivalent(a, b))

	c := []byte(`{"data":{"metrics":{"totalStudents":11}}}`)
	assert.False(t, equivalent(a, c))
	assert.False(t, equivalent(a, []byte("not json")))
}

func TestCompareReportsStatusDiff(t *testing.T) {
	left := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer left.Close()
	right := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer right.Close()

	res := compare(left.Client(), left.URL, right.URL, target{Path: "api/v1/schools", Critical: true})

	assert.NoError(t, res.Err)
	assert.True(t, res.BodyMatch)
	assert.True(t, res.failed())

	var out bytes.Buffer
	report(&out, []result{res})
	assert.Contains(t, out.String(), "[DIFF] GET api/v1/schools")
}
