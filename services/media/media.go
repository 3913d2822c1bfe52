package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tourhub/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// StoryImagesFolder is where story images are uploaded.
const StoryImagesFolder = "tourhub/stories"

// UploadedImage is what clients store in a story's images list.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaService hosts user-supplied images.
type MediaService interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (*UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryMediaService implements MediaService using Cloudinary.
type CloudinaryMediaService struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

func NewCloudinaryMediaService(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*CloudinaryMediaService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryMediaService{cld: cld, folder: StoryImagesFolder, logger: logger}, nil
}

func (s *CloudinaryMediaService) UploadImage(ctx context.Context, file io.Reader, filename string) (*UploadedImage, error) {
	if !IsImageFilename(filename) {
		return nil, utils.Validation("only jpg, jpeg, png, gif and webp images are accepted")
	}
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, utils.Internal("failed to upload image", err)
	}
	if result.Error.Message != "" {
		return nil, utils.Internal("failed to upload image", fmt.Errorf("%s", result.Error.Message))
	}
	if result.PublicID == "" {
		return nil, utils.Internal("failed to upload image", fmt.Errorf("no public ID returned"))
	}
	s.logger.Info("Image uploaded", zap.String("publicId", result.PublicID))
	return &UploadedImage{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryMediaService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return utils.Internal("failed to delete image", err)
	}
	return nil
}

// IsImageFilename accepts the extensions the story gallery can render.
func IsImageFilename(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
