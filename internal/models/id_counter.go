package models

// Entity kinds that draw identifiers from the per-year sequence.
const (
	EntityKindTask = "task"
	EntityKindUser = "user"
)

// IDCounter holds the last issued sequence number for one (entity kind, year)
// pair. The row is incremented with a single UPDATE inside the transaction
// that inserts the owning entity, so concurrent allocations for the same key
// serialize on the row lock and can never observe the same value.
type IDCounter struct {
	EntityKind string `gorm:"type:varchar(10);primaryKey" json:"entity_kind"`
	Year       string `gorm:"type:varchar(2);primaryKey" json:"year"`
	LastNumber int    `gorm:"not null;default:0" json:"last_number"`
}
