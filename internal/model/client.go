package model

// Client exam vendor (Pearson VUE, Prometric, ...) (clients)
type Client struct {
	ClientID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"client_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Exams []ClientExam `gorm:"foreignKey:ClientID;references:ClientID" json:"exams,omitempty"`
}

func (Client) TableName() string { return "clients" }

// ClientExam exam offered by a client (client_exams)
type ClientExam struct {
	ExamID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	ClientID string `gorm:"type:uuid;not null;index"                       json:"client_id"`
	Name     string `gorm:"type:varchar(150);not null"                     json:"name"`
	Code     string `gorm:"type:varchar(50)"                               json:"code,omitempty"`
	BaseModel
}

func (ClientExam) TableName() string { return "client_exams" }
