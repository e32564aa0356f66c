package errorx

var (
	ErrNotConfigured = Error{Code: NotConfigured, Message: "Object storage is not configured"}
	ErrEmptySource   = Error{Code: SourceUnreadable, Message: "Image source is empty"}
)
