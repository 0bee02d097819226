package gcloud

import (
	"context"
	"fmt"

	"google.golang.org/api/compute/v1"
)

func (s *service) LatestImageFromFamily(ctx context.Context, family string) (string, error) {
	image, err := s.api.GetImageFromFamily(ctx, family)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("%w: family %s: %v", ErrImageNotFound, family, err)
		}
		return "", err
	}
	if image.SelfLink == "" {
		return "", fmt.Errorf("%w: family %s", ErrImageNotFound, family)
	}
	return image.SelfLink, nil
}

func (s *service) deleteImage(ctx context.Context, name string) error {
	deleteOp, err := s.api.DeleteImage(ctx, name)
	if err != nil {
		return err
	}
	_, err = s.WaitForOperation(ctx, deleteOp, GlobalScope)
	return err
}

// ReplaceImage deletes the image called name if present, registers a new one
// from the raw disk at source and returns the link of the new image.
func (s *service) ReplaceImage(ctx context.Context, name, source string) (string, error) {
	s.log.Infof("removing old image %s...", name)
	if err := s.deleteImage(ctx, name); err != nil {
		s.log.Infof("removal failed, assuming image %s did not exist: %v", name, err)
	}

	s.log.Infof("creating image %s from %s...", name, source)
	insertOp, err := s.api.InsertImage(ctx, &compute.Image{
		Name: name,
		RawDisk: &compute.ImageRawDisk{
			Source: source,
		},
	})
	if err != nil {
		return "", err
	}
	if _, err := s.WaitForOperation(ctx, insertOp, GlobalScope); err != nil {
		return "", err
	}
	return insertOp.TargetLink, nil
}
