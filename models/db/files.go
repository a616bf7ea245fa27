package dbmodels

// SignatureFile изображение подписи в S3. Url подставляется в поля подписи разделов формы.
type SignatureFile struct {
	BaseModel
	OwnerID     string `gorm:"type:varchar(36);index" json:"ownerId"`
	FileName    string `json:"fileName"`
	ObjectName  string `json:"-"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Url         string `json:"url"`
}
