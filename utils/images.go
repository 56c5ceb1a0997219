package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveImage writes an uploaded image under folder with a fresh name and
// returns the stored filename. The Content-Type must be a supported image
// type.
func SaveImage(file multipart.File, header *multipart.FileHeader, folder, id string) (string, error) {
	ext, ok := SupportedImageTypes[header.Header.Get("Content-Type")]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", header.Header.Get("Content-Type"))
	}
	if err := EnsureDir(folder); err != nil {
		return "", err
	}
	filename := id + ext
	out, err := os.Create(filepath.Join(folder, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return filename, nil
}

// CreateThumb writes a <id>_thumb.jpg alongside the stored image, resized
// to fit the given box.
func CreateThumb(folder, filename, id string, width, height int) error {
	img, err := imaging.Open(filepath.Join(folder, filename))
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, width, height, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(folder, id+"_thumb.jpg"))
}

// ValidateImageFileType rejects uploads whose MIME type is not a supported
// image format.
func ValidateImageFileType(w http.ResponseWriter, header *multipart.FileHeader) bool {
	if _, ok := SupportedImageTypes[header.Header.Get("Content-Type")]; !ok {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, WebP.", http.StatusBadRequest)
		return false
	}
	return true
}
