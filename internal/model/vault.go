package model

import "github.com/lib/pq"

// VaultItem shared reference entry (procedures, contacts, credentials hints) (vault_items)
type VaultItem struct {
	ItemID         string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"item_id"`
	Title          string         `gorm:"type:varchar(200);not null"                     json:"title"`
	Category       string         `gorm:"type:varchar(50);not null;default:'general'"    json:"category"`
	Content        string         `gorm:"type:text"                                      json:"content,omitempty"`
	Tags           pq.StringArray `gorm:"type:text[]"                                    json:"tags"`
	BranchLocation string         `gorm:"type:varchar(20);not null;index"                json:"branch_location"`
	SoftDeleteModel
}

func (VaultItem) TableName() string { return "vault_items" }
