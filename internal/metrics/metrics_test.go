package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProviderFetch(t *testing.T) {
	ok := ProviderFetchTotal.WithLabelValues("stub", "success")
	failed := ProviderFetchTotal.WithLabelValues("stub", "error")
	beforeOK, beforeFailed := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordProviderFetch("stub", nil)
	RecordProviderFetch("stub", errors.New("boom"))
	RecordProviderFetch("stub", errors.New("boom"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	assert.Equal(t, beforeFailed+2, testutil.ToFloat64(failed))
}

func TestRecordAdjustmentLabels(t *testing.T) {
	c := AdjustmentsTotal.WithLabelValues("true", "false", "rain expected")
	before := testutil.ToFloat64(c)

	RecordAdjustment(true, false, "rain expected")
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordSpeciesFallback(t *testing.T) {
	before := testutil.ToFloat64(SpeciesFallbackTotal)
	RecordSpeciesFallback("Plantus ignotus")
	assert.Equal(t, before+1, testutil.ToFloat64(SpeciesFallbackTotal))
}
