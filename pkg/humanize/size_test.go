package humanize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	assert.Equal(t, "512B", Size(512))
	assert.Equal(t, "1.5KB", Size(1536))
	assert.Equal(t, "2.0MB", Size(2*1024*1024))
	assert.Equal(t, "3.0GB", Size(3*1024*1024*1024))
}
