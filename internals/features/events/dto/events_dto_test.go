package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "chilume_backend/internals/helpers"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateEventRequestBlankText(t *testing.T) {
	tests := []struct {
		name  string
		req   UpdateEventRequest
		field string
	}{
		{"blank name", UpdateEventRequest{EventName: ptr("   ")}, "event_name"},
		{"empty name", UpdateEventRequest{EventName: ptr("")}, "event_name"},
		{"blank venue", UpdateEventRequest{EventVenue: ptr(" \t ")}, "event_venue"},
		{"bad type", UpdateEventRequest{EventType: ptr("esports")}, "event_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Normalize()
			errs := helper.ValidateStruct(req)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestUpdateEventRequestToPatch(t *testing.T) {
	req := UpdateEventRequest{
		EventName:  ptr("  Chess Open "),
		EventType:  ptr(" Sports "),
		EventVenue: ptr(" Hall B"),
	}
	req.Normalize()
	require.Nil(t, helper.ValidateStruct(req))

	p := req.ToPatch()
	assert.Equal(t, "Chess Open", *p.Name)
	assert.Equal(t, "Hall B", *p.Venue)
	assert.Equal(t, "sports", string(*p.Type))
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Fee)
}
