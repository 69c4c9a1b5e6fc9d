package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanAllows(t *testing.T) {
	assert.True(t, PlanBasico.Allows(PlanBasico))
	assert.False(t, PlanBasico.Allows(PlanPadrao))
	assert.False(t, PlanPadrao.Allows(PlanBasico))
	assert.False(t, PlanPadrao.Allows(PlanPremium))
	for _, p := range []Plan{PlanBasico, PlanPadrao, PlanPremium} {
		assert.True(t, PlanPremium.Allows(p))
	}
}

func TestPlanValid(t *testing.T) {
	assert.True(t, PlanPadrao.Valid())
	assert.False(t, Plan("OURO").Valid())
	assert.False(t, Plan("").Valid())
}
