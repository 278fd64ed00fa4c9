package specs

import "strings"

const (
	ContentTypeUndefined = ""
	ContentTypeRaw       = "application/octet-stream"
	ContentTypePlain     = "text/plain"
	ContentTypeRichText  = "application/rtf"
	ContentTypeMarkdown  = "text/markdown"

	ContentTypeHTML       = "text/html"
	ContentTypeCSV        = "text/csv"
	ContentTypeCSS        = "text/css"
	ContentTypePDF        = "application/pdf"
	ContentTypeJavaScript = "text/javascript"
	ContentTypeFontTTF    = "font/ttf"
	ContentTypeFontWOFF   = "font/woff"
	ContentTypeFontWOFF2  = "font/woff2"
	ContentTypeWasm       = "application/wasm"
	ContentTypeIcon       = "image/vnd.microsoft.icon"

	ContentTypeAVI  = "video/x-msvideo"
	ContentTypeWAV  = "audio/wav"
	ContentTypeMP3  = "audio/mpeg"
	ContentTypeMP4  = "video/mp4"
	ContentTypeMPEG = "video/mpeg"
	ContentTypeMPV  = "video/MPV"
	ContentTypeMKV  = "application/x-matroska"

	ContentTypeAVIF = "image/avif"
	ContentTypeBMP  = "image/bmp"
	ContentTypeGIF  = "image/gif"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeWEBP = "image/webp"
	ContentTypeSVG  = "image/svg+xml"

	ContentTypeJson      = "application/json"
	ContentTypeXml       = "application/xml"
	ContentTypeMsgpack   = "application/msgpack"
	ContentTypeProtobuf  = "application/x-protobuf"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// MatchContentType reports whether the Content-Type header of header names
// contentType, ignoring parameters, case and surrounding spaces.
func MatchContentType(header *Header, contentType string) bool {
	value, has := header.TryGet("Content-Type")
	if !has {
		return false
	}
	mediaType, _, _ := strings.Cut(value, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), contentType)
}

var contentTypeByExtension = map[string]string{
	"txt":      ContentTypePlain,
	"rtf":      ContentTypeRichText,
	"md":       ContentTypeMarkdown,
	"html":     ContentTypeHTML,
	"htm":      ContentTypeHTML,
	"csv":      ContentTypeCSV,
	"css":      ContentTypeCSS,
	"pdf":      ContentTypePDF,
	"js":       ContentTypeJavaScript,
	"mjs":      ContentTypeJavaScript,
	"ttf":      ContentTypeFontTTF,
	"avi":      ContentTypeAVI,
	"wav":      ContentTypeWAV,
	"mp3":      ContentTypeMP3,
	"mp4":      ContentTypeMP4,
	"mpeg":     ContentTypeMPEG,
	"mpv":      ContentTypeMPV,
	"mkv":      ContentTypeMKV,
	"avif":     ContentTypeAVIF,
	"bmp":      ContentTypeBMP,
	"gif":      ContentTypeGIF,
	"jpg":      ContentTypeJPEG,
	"jpeg":     ContentTypeJPEG,
	"png":      ContentTypePNG,
	"webp":     ContentTypeWEBP,
	"svg":      ContentTypeSVG,
	"ico":      ContentTypeIcon,
	"json":     ContentTypeJson,
	"xml":      ContentTypeXml,
	"wasm":     ContentTypeWasm,
	"woff":     ContentTypeFontWOFF,
	"woff2":    ContentTypeFontWOFF2,
	"bin":      ContentTypeRaw,
	"msgpack":  ContentTypeMsgpack,
	"protobuf": ContentTypeProtobuf,
}

// ContentTypeByExtension looks up the media type of a file extension given
// without the leading dot. Lookup is case-insensitive.
func ContentTypeByExtension(ext string) (string, bool) {
	contentType, ok := contentTypeByExtension[strings.ToLower(ext)]
	return contentType, ok
}
