package domain

import (
	"errors"
	"testing"
)

const testMaxSize = 10 << 20

func TestValidateUploadContentType(t *testing.T) {
	cases := []struct {
		contentType string
		ok          bool
	}{
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/png", true},
		{"IMAGE/PNG", true},
		{"image/jpeg; charset=binary", true},
		{"image/pjpeg", true}, // подтип содержит jpeg
		{"image/webp", false},
		{"image/gif", false},
		{"application/pdf", false},
		{"text/plain", false},
		{"application/png", false}, // не image/*
		{"", false},
		{"image", false},
	}

	for _, tc := range cases {
		t.Run(tc.contentType, func(t *testing.T) {
			err := ValidateUpload(Upload{
				FileName:    "receipt.bin",
				ContentType: tc.contentType,
				Size:        100,
			}, testMaxSize)

			if tc.ok && err != nil {
				t.Errorf("ValidateUpload(%q) = %v, want admit", tc.contentType, err)
			}
			if !tc.ok && !errors.Is(err, ErrUnsupportedFileType) {
				t.Errorf("ValidateUpload(%q) = %v, want ErrUnsupportedFileType", tc.contentType, err)
			}
		})
	}
}

func TestValidateUploadSize(t *testing.T) {
	upload := Upload{FileName: "receipt.jpg", ContentType: "image/jpeg"}

	upload.Size = testMaxSize
	if err := ValidateUpload(upload, testMaxSize); err != nil {
		t.Errorf("size at limit must be admitted, got %v", err)
	}

	upload.Size = testMaxSize + 1
	if err := ValidateUpload(upload, testMaxSize); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("got %v, want ErrFileTooLarge", err)
	}
}

func TestValidateUploadTypeCheckedBeforeSize(t *testing.T) {
	// Неподдерживаемый тип репортится даже если файл ещё и слишком большой
	err := ValidateUpload(Upload{
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		Size:        testMaxSize * 2,
	}, testMaxSize)

	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("got %v, want ErrUnsupportedFileType", err)
	}
}
