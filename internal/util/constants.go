package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 上传相关常量
const (
	MimeAudio       = "audio/"
	MimeVideoWebm   = "video/webm"
	MimePDF         = "application/pdf"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	MaxAudioBytes  = 20 << 20
	MaxResumeBytes = 10 << 20
)

var (
	AllowedAudioExtensions  = []string{".wav", ".webm", ".mp3", ".ogg", ".m4a"}
	AllowedResumeExtensions = []string{".pdf", ".docx"}
)
