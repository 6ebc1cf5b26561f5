package model

import (
	"encoding/base64"
	"encoding/json"
)

// Image is either a reference (URL or stored file name) or inline file
// content. On the wire it is always a single string.
type Image struct {
	Ref         string
	Data        []byte
	ContentType string
}

func ImageRef(ref string) Image {
	return Image{Ref: ref}
}

func ImageData(contentType string, data []byte) Image {
	return Image{Data: data, ContentType: contentType}
}

// String returns the reference, or a data URL when the image holds content.
func (i Image) String() string {
	if len(i.Data) == 0 {
		return i.Ref
	}
	ct := i.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

func (i Image) IsZero() bool {
	return i.Ref == "" && len(i.Data) == 0
}

func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Image) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*i = Image{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*i = Image{Ref: s}
	return nil
}
