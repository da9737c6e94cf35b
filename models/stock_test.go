package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConservesTotal(t *testing.T) {
	s := Stock{AvailableQuantity: 30, SaleableQuantity: 70}

	assert.True(t, s.ConservesTotal(50, 50))
	assert.True(t, s.ConservesTotal(0, 100))
	assert.True(t, s.ConservesTotal(100, 0))
	// toleransi pembulatan float 0.01
	assert.True(t, s.ConservesTotal(50.004, 50.004))
	assert.False(t, s.ConservesTotal(50, 51))
	assert.False(t, s.ConservesTotal(50, 49))
	assert.False(t, s.ConservesTotal(50.02, 50))
}
