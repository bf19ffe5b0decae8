package export

import (
	"mime"
	"path/filepath"
	"strings"
)

// OctetStream is the MIME type of an arbitrary byte range.
const OctetStream = "application/octet-stream"

var extensions = map[string]string{
	"text/html":                            "html",
	"text/css":                             "css",
	"text/xml":                             "xml",
	"image/gif":                            "gif",
	"image/jpeg":                           "jpg",
	"application/x-javascript":             "js",
	"application/atom+xml":                 "atom",
	"application/rss+xml":                  "rss",
	"text/mathml":                          "mml",
	"text/plain":                           "txt",
	"text/vnd.sun.j2me.app-descriptor":     "jad",
	"text/vnd.wap.wml":                     "wml",
	"text/x-component":                     "htc",
	"image/png":                            "png",
	"image/tiff":                           "tif",
	"image/vnd.wap.wbmp":                   "wbmp",
	"image/x-icon":                         "ico",
	"image/x-jng":                          "jng",
	"image/x-ms-bmp":                       "bmp",
	"image/svg+xml":                        "svg",
	"image/webp":                           "webp",
	"application/java-archive":             "jar",
	"application/mac-binhex40":             "hqx",
	"application/msword":                   "doc",
	"application/pdf":                      "pdf",
	"application/postscript":               "ps",
	"application/rtf":                      "rtf",
	"application/vnd.ms-excel":             "xls",
	"application/vnd.ms-powerpoint":        "ppt",
	"application/vnd.wap.wmlc":             "wmlc",
	"application/vnd.google-earth.kml+xml": "kml",
	"application/vnd.google-earth.kmz":     "kmz",
	"application/x-7z-compressed":          "7z",
	"application/x-cocoa":                  "cco",
	"application/x-java-archive-diff":      "jardiff",
	"application/x-java-jnlp-file":         "jnlp",
	"application/x-makeself":               "run",
	"application/x-perl":                   "pl",
	"application/x-pilot":                  "prc",
	"application/x-rar-compressed":         "rar",
	"application/x-redhat-package-manager": "rpm",
	"application/x-sea":                    "sea",
	"application/x-shockwave-flash":        "swf",
	"application/x-stuffit":                "sit",
	"application/x-tcl":                    "tcl",
	"application/x-x509-ca-cert":           "pem",
	"application/x-xpinstall":              "xpi",
	"application/xhtml+xml":                "xhtml",
	"application/zip":                      "zip",
	OctetStream:                            "bin",
	"audio/midi":                           "mid",
	"audio/mpeg":                           "mp3",
	"audio/ogg":                            "ogg",
	"audio/x-realaudio":                    "ra",
	"video/3gpp":                           "3gpp",
	"video/mpeg":                           "mpg",
	"video/quicktime":                      "mov",
	"video/x-flv":                          "flv",
	"video/x-mng":                          "mng",
	"video/x-ms-asf":                       "asx",
	"video/x-ms-wmv":                       "wmv",
	"video/x-msvideo":                      "avi",
	"video/mp4":                            "mp4",
}

var mimeTypes = func() map[string]string {
	m := make(map[string]string, len(extensions))
	for mimeType, ext := range extensions {
		m[ext] = mimeType
	}
	return m
}()

// ExtensionFor returns the file extension, without a dot, for mimeType.
func ExtensionFor(mimeType string) (string, bool) {
	ext, ok := extensions[mimeType]
	return ext, ok
}

// MIMEFor returns the MIME type registered for extension, or "".
func MIMEFor(extension string) string {
	return mimeTypes[strings.TrimPrefix(extension, ".")]
}

// FileMIME guesses the MIME type of a file from its name. Parameters such
// as charset are dropped.
func FileMIME(name string) string {
	t := mime.TypeByExtension(filepath.Ext(name))
	if t == "" {
		return OctetStream
	}
	if mediaType, _, err := mime.ParseMediaType(t); err == nil {
		return mediaType
	}
	return t
}
