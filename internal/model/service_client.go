package model

// ServiceClient 允许调用本服务的协作方（课程生成、内容渲染等服务）
type ServiceClient struct {
	BaseModel
	ClientID    string `gorm:"size:64;uniqueIndex;not null" json:"clientId"`
	SecretHash  string `gorm:"size:100;not null" json:"-"`
	Description string `gorm:"size:255" json:"description"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (ServiceClient) TableName() string {
	return "service_clients"
}
