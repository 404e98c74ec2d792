package ratelimit

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func trackUsage(g *Governor, accountID, endpoint string, usagePercent float64, callCount int) {
	header := http.Header{}
	header.Set("x-business-use-case-usage", fmt.Sprintf(
		`{"acc_id_util_pct": %.1f, "call_count": %d, "total_cputime": 5, "total_time": 8, "estimated_time_to_regain_access": 0, "business_use_case": "ads_insights"}`,
		usagePercent, callCount))
	g.Track(accountID, endpoint, header)
}

func TestGovernorDelay(t *testing.T) {
	tests := []struct {
		name         string
		endpoint     string
		usagePercent float64
		callCount    int
		points       int
		expected     time.Duration
	}{
		{
			name:         "Uso abaixo do limiar não deve aconselhar atraso",
			endpoint:     "campaigns",
			usagePercent: 50,
			callCount:    10,
			points:       1,
			expected:     0,
		},
		{
			name:         "Uso acima do limiar deve aconselhar o atraso base",
			endpoint:     "campaigns",
			usagePercent: 90,
			callCount:    10,
			points:       1,
			expected:     1 * time.Second,
		},
		{
			name:         "Endpoint de insights deve usar base maior",
			endpoint:     "insights",
			usagePercent: 90,
			callCount:    10,
			points:       2,
			expected:     3 * time.Second,
		},
		{
			name:         "Custo alto em pontos deve escalar o atraso",
			endpoint:     "campaigns",
			usagePercent: 90,
			callCount:    10,
			points:       25,
			expected:     3 * time.Second,
		},
		{
			name:         "Volume de chamadas acumulado deve escalar o atraso",
			endpoint:     "campaigns",
			usagePercent: 90,
			callCount:    45,
			points:       1,
			expected:     5 * time.Second,
		},
		{
			name:         "Volume intermediário deve escalar proporcionalmente",
			endpoint:     "campaigns",
			usagePercent: 90,
			callCount:    25,
			points:       1,
			expected:     3 * time.Second,
		},
		{
			name:         "Atraso escalado deve respeitar o teto",
			endpoint:     "insights",
			usagePercent: 95.5,
			callCount:    10,
			points:       25,
			expected:     5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			governor := NewGovernor(nil, "development")
			trackUsage(governor, "ACC001", tt.endpoint, tt.usagePercent, tt.callCount)

			delay := governor.Delay("ACC001", tt.endpoint, tt.points)
			assert.Equal(t, tt.expected, delay)
		})
	}
}

func TestGovernorDelayWithoutSnapshot(t *testing.T) {
	governor := NewGovernor(nil, "development")

	// Sem snapshot registrado não há base para aconselhar atraso
	assert.Equal(t, time.Duration(0), governor.Delay("ACC001", "campaigns", 1))
}

func TestGovernorDelayIsPerAccountAndEndpoint(t *testing.T) {
	governor := NewGovernor(nil, "standard")
	trackUsage(governor, "ACC001", "insights", 90, 10)

	// O uso alto de uma conta não afeta outra, nem outro endpoint da mesma conta
	assert.Equal(t, 3*time.Second, governor.Delay("ACC001", "insights", 2))
	assert.Equal(t, time.Duration(0), governor.Delay("ACC002", "insights", 2))
	assert.Equal(t, time.Duration(0), governor.Delay("ACC001", "campaigns", 1))
}

func TestGovernorTrackDecodesHeaders(t *testing.T) {
	governor := NewGovernor(nil, "standard")

	header := http.Header{}
	header.Set("x-business-use-case-usage",
		`{"acc_id_util_pct": 42.5, "call_count": 7, "total_cputime": 3, "total_time": 4, "estimated_time_to_regain_access": 0, "business_use_case": "ads_management"}`)
	header.Set("x-ad-account-usage", `{"reset_time_duration": 300}`)

	governor.Track("ACC001", "campaigns", header)

	governor.mu.Lock()
	snapshot := governor.usage["ACC001:campaigns"]
	governor.mu.Unlock()

	assert.NotNil(t, snapshot)
	assert.Equal(t, 42.5, snapshot.UsagePercent)
	assert.Equal(t, 7, snapshot.CallCount)
	assert.Equal(t, 300.0, snapshot.ResetTimeDuration)
	assert.Equal(t, "ads_management", snapshot.BusinessUseCase)
	assert.Equal(t, "standard", snapshot.Tier)
}

func TestGovernorTrackIgnoresMalformedHeader(t *testing.T) {
	governor := NewGovernor(nil, "development")

	header := http.Header{}
	header.Set("x-business-use-case-usage", `{invalid json`)

	// Header malformado não pode derrubar a chamada nem aconselhar atraso
	governor.Track("ACC001", "campaigns", header)
	assert.Equal(t, time.Duration(0), governor.Delay("ACC001", "campaigns", 1))
}
