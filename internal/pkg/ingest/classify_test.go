package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		licenseType string
		want        string
	}{
		{"RESTAURANT - FOOD SERVICE", "restaurants"},
		{"Drinking Establishment (Minors Prohibited)", "restaurants"},
		{"RETAIL DEALER - GENERAL", "retail"},
		{"FARMERS MARKET", "retail"},
		{"HAIR SALON", "beauty"},
		{"BARBER SHOP", "beauty"},
		{"MASSAGE THERAPY", "health"},
		{"FITNESS CENTRE", "health"},
		{"PET CARE SERVICE", "services"},
		{"AMUSEMENT ARCADE", "entertainment"},
	}

	for _, tt := range tests {
		t.Run(tt.licenseType, func(t *testing.T) {
			got := Categorize(tt.licenseType)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, *got)
			}
		})
	}
}

func TestCategorizeUnknownStaysNil(t *testing.T) {
	assert.Nil(t, Categorize("ALPACA SHEARING"))
	assert.Nil(t, Categorize(""))
}

func TestIsConsumerFacing(t *testing.T) {
	assert.True(t, IsConsumerFacing("RESTAURANT - FOOD SERVICE"))
	assert.True(t, IsConsumerFacing("RETAIL DEALER - GENERAL"))
	assert.True(t, IsConsumerFacing(""))

	assert.False(t, IsConsumerFacing("HOME OCCUPATION - CLASS 1"))
	assert.False(t, IsConsumerFacing("ELECTRICAL CONTRACTOR"))
	assert.False(t, IsConsumerFacing("WHOLESALE DEALER"))
	assert.False(t, IsConsumerFacing("Manufacturing Plant"))
}
