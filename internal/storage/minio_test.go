package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	url := ObjectURL("http://minio:9000/", "logos", "/tenants/1/logo.png")
	assert.Equal(t, "http://minio:9000/logos/tenants/1/logo.png", url)

	key, ok := KeyFromURL("http://minio:9000", "logos", url)
	assert.True(t, ok)
	assert.Equal(t, "tenants/1/logo.png", key)

	_, ok = KeyFromURL("http://minio:9000", "logos", "https://cdn.example.com/x.png")
	assert.False(t, ok)
}
