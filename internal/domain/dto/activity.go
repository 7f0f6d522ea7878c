package dto

import (
	"sort"
	"time"

	"github.com/planloop/planloop/internal/domain/entity"
)

type ActivityType string

const (
	ActivityTypePlan ActivityType = "plan"
	ActivityTypePost ActivityType = "post"
)

// Activity is a tagged union over the two feed entity types. Exactly one of
// Plan or Post is set, matching Type.
type Activity struct {
	Type ActivityType `json:"type"`
	Plan *entity.Plan `json:"plan,omitempty"`
	Post *entity.Post `json:"post,omitempty"`
}

func NewPlanActivity(plan entity.Plan) Activity {
	return Activity{Type: ActivityTypePlan, Plan: &plan}
}

func NewPostActivity(post entity.Post) Activity {
	return Activity{Type: ActivityTypePost, Post: &post}
}

// EntityID returns the id of the wrapped entity.
func (a Activity) EntityID() string {
	switch a.Type {
	case ActivityTypePlan:
		return a.Plan.ID
	case ActivityTypePost:
		return a.Post.ID
	}
	return ""
}

// SortTime is the feed ordering key: UpdatedAt when set, CreatedAt otherwise.
func (a Activity) SortTime() time.Time {
	switch a.Type {
	case ActivityTypePlan:
		return a.Plan.TouchedAt()
	case ActivityTypePost:
		return a.Post.TouchedAt()
	}
	return time.Time{}
}

// SortActivities orders a feed most-recently-touched first. Ties are broken by
// entity id so the ordering is deterministic.
func SortActivities(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		ti, tj := activities[i].SortTime(), activities[j].SortTime()
		if ti.Equal(tj) {
			return activities[i].EntityID() < activities[j].EntityID()
		}
		return ti.After(tj)
	})
}
