package cli

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/buildplan/internal/domain"
)

func TestValidatePlotArea(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"1200", ""},
		{" 500 ", ""},
		{"499", "at least 500"},
		{"", "enter the plot area"},
		{"big", "enter the plot area"},
	}
	for _, tt := range tests {
		err := validatePlotArea(tt.in)
		if tt.wantErr == "" {
			assert.NoError(t, err, tt.in)
			continue
		}
		require.Error(t, err, tt.in)
		assert.Contains(t, err.Error(), tt.wantErr)
	}
}

func TestValidateLocation(t *testing.T) {
	assert.NoError(t, validateLocation("Mysuru"))
	assert.Error(t, validateLocation("   "))
}

func TestIntakeWizard_ParsesAnswers(t *testing.T) {
	wiz := newIntakeWizard(domain.DefaultIntake())
	assert.Equal(t, "1200", wiz.plotArea)

	wiz.plotArea = " 2400 "
	wiz.intake.Location = "  Mysuru "
	wiz.intake.Floors = 3

	in, err := wiz.Intake()
	require.NoError(t, err)
	assert.Equal(t, 2400.0, in.PlotArea)
	assert.Equal(t, "Mysuru", in.Location)
	assert.Equal(t, 3, in.Floors)
}

func TestIntakeWizard_RejectsSmallPlot(t *testing.T) {
	wiz := newIntakeWizard(domain.DefaultIntake())
	wiz.plotArea = "100"

	_, err := wiz.Intake()
	require.Error(t, err)
}

func TestIntakeWizard_FormStartsOnFirstField(t *testing.T) {
	wiz := newIntakeWizard(domain.DefaultIntake())
	f := wiz.form()
	require.NotNil(t, f)
	f.Init()
	assert.Equal(t, huh.StateNormal, f.State)
	assert.NotNil(t, f.GetFocusedField())
}

func TestIntOptions(t *testing.T) {
	opts := intOptions(1, 3)
	require.Len(t, opts, 3)
	assert.Equal(t, 1, opts[0].Value)
	assert.Equal(t, "3", opts[2].Key)
}
