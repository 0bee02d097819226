package gcloud

import (
	"context"
	"fmt"
	"io"

	"github.com/christophwitzko/gce-ci-agent/pkg/config"
	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud/storage"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// Service is an authenticated session for one project and zone.
type Service interface {
	Config() *config.Config
	CreateInstance(ctx context.Context, name string) (*compute.Instance, error)
	DeleteInstance(ctx context.Context, name string) error
	InsertTestInstance(ctx context.Context, name, image string) error
	UploadArtifact(ctx context.Context, src, objectName string) (string, error)
	ReplaceImage(ctx context.Context, name, source string) (string, error)
	TailSerialPort(ctx context.Context, name string, w io.Writer) error
	Close() error
}

type objectUploader interface {
	UploadFile(ctx context.Context, bucketName, objectName, src string) (string, error)
	Close() error
}

type service struct {
	log      *logger.Logger
	conf     *config.Config
	api      computeAPI
	uploader objectUploader
	sleep    Sleeper
}

func NewService(ctx context.Context, log *logger.Logger, conf *config.Config) (Service, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	credentials := option.WithCredentialsFile(conf.KeyFile)
	computeService, err := compute.NewService(ctx, credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}
	uploader, err := storage.NewUploader(ctx, credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	api := &restCompute{
		computeService: computeService,
		project:        conf.Project,
		zone:           conf.Zone,
	}
	return newService(log, conf, api, uploader), nil
}

func newService(log *logger.Logger, conf *config.Config, api computeAPI, uploader objectUploader) *service {
	return &service{
		log:      log,
		conf:     conf,
		api:      api,
		uploader: uploader,
		sleep:    sleepContext,
	}
}

func (s *service) Config() *config.Config {
	return s.conf
}

func (s *service) UploadArtifact(ctx context.Context, src, objectName string) (string, error) {
	if err := s.conf.RequireBucket(); err != nil {
		return "", err
	}
	s.log.Infof("uploading %s -> gs://%s/%s...", src, s.conf.Bucket, objectName)
	return s.uploader.UploadFile(ctx, s.conf.Bucket, objectName, src)
}

func (s *service) Close() error {
	return s.uploader.Close()
}
