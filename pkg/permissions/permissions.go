// Package permissions maps a session role onto the calendar capabilities.
// Students get a read-only calendar; every other role gets full CRUD.
package permissions

import "github.com/schooldesk/classcal/pkg/models"

type Capabilities struct {
	Create bool
	Edit   bool
	Move   bool
	Resize bool
	Delete bool
}

func Allowed(role string) Capabilities {
	if role == models.RoleStudent {
		return Capabilities{}
	}
	return Capabilities{
		Create: true,
		Edit:   true,
		Move:   true,
		Resize: true,
		Delete: true,
	}
}

func (c Capabilities) ReadOnly() bool {
	return !c.Create && !c.Edit && !c.Move && !c.Resize && !c.Delete
}
