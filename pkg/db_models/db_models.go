package db_models

// Task is the only persisted entity. ID is assigned by the store.
type Task struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
}

// TaskPatch carries the fields of a partial update. Nil fields are left as they are.
type TaskPatch struct {
	Title     *string
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil
}
