package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009

	// Media codes
	NotConfigured    Code = 500001
	SourceUnreadable Code = 500002
	UploadFailed     Code = 500003
	DeleteFailed     Code = 500004
)

var codeNames = map[Code]string{
	BadRequest:       "BadRequest",
	BadResponse:      "BadResponse",
	PermissionDenied: "PermissionDenied",
	NotFound:         "NotFound",
	AlreadyExists:    "AlreadyExists",
	Internal:         "Internal",
	Unavailable:      "Unavailable",
	NotImplemented:   "NotImplemented",
	NotConfigured:    "NotConfigured",
	SourceUnreadable: "SourceUnreadable",
	UploadFailed:     "UploadFailed",
	DeleteFailed:     "DeleteFailed",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Unknown"
}
