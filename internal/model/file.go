package model

type File struct {
	ID        string `json:"id"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`
	Url       string `json:"url"`
	Mime      string `json:"mime"`
	CreatedAt string `json:"created_at"`
}

// Data of upload requests is a data URI, bare base64 or an http(s) URL.
type UploadImageRequest struct {
	Bucket string `json:"bucket"`
	Folder string `json:"folder"`
	Prefix string `json:"prefix"`
	Mime   string `json:"mime"`
	Data   string `json:"data"`
}

type UploadImageResponse struct {
	File File `json:"file"`
}

type UploadImagesRequest struct {
	Bucket string   `json:"bucket"`
	Folder string   `json:"folder"`
	Prefix string   `json:"prefix"`
	Data   []string `json:"data"`
}

type UploadImagesResponse struct {
	Files []File `json:"files"`
}

type DeleteImageRequest struct {
	ID string `json:"id"`
}

type DeleteImageResponse struct{}

type GetFileRequest struct {
	ID string `json:"id" form:"id"`
}

type GetFileResponse struct {
	File File `json:"file"`
}

type HealthRequest struct{}

type HealthResponse struct {
	Storage  string `json:"storage"`
	Database string `json:"database"`
}
