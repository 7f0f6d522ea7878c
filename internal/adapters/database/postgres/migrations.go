package postgres

import "github.com/planloop/planloop/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Organization{},
	&entity.OrganizationMember{},
	&entity.Workspace{},
	&entity.WorkspaceMember{},
	&entity.Plan{},
	&entity.Post{},
	&entity.Comment{},
	&entity.Connection{},
	&entity.SystemNotification{},
	&entity.PlanReminder{},
}
