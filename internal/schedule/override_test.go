package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConflicts() []ConflictRecord {
	return []ConflictRecord{
		{HearingID: "h1", CaseNumber: "CASE-001", StartAt: utc(10, 0), EndAt: utc(11, 0)},
		{HearingID: "h2", CaseNumber: "CASE-002", StartAt: utc(10, 30), EndAt: utc(11, 30)},
	}
}

func TestBuildOverride_RecordsMetadata(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	override, err := BuildOverride(sampleConflicts(), "Emergency hearing", "attorney-1", now)
	require.NoError(t, err)

	assert.True(t, override.Allowed)
	assert.Equal(t, "Emergency hearing", override.Reason)
	assert.Equal(t, "attorney-1", override.OverriddenBy)
	assert.Equal(t, now, override.OverriddenAt)
	assert.Equal(t, []string{"h1", "h2"}, override.ConflictingHearings)
}

func TestBuildOverride_TrimsReason(t *testing.T) {
	override, err := BuildOverride(sampleConflicts(), "  urgent stay application \n", "attorney-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "urgent stay application", override.Reason)
}

func TestBuildOverride_ReasonRequired(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := BuildOverride(sampleConflicts(), reason, "attorney-1", time.Now())
		assert.ErrorIsf(t, err, ErrReasonRequired, "reason %q should be rejected", reason)
	}
}

func TestBuildOverride_NoConflictsIsNoOp(t *testing.T) {
	_, err := BuildOverride(nil, "some reason", "attorney-1", time.Now())
	assert.ErrorIs(t, err, ErrNoConflicts)
}
