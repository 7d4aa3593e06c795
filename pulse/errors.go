package pulse

import "errors"

var (
	// ErrDeviceCreationFailed is returned if no hardware accelerated device could be created.
	ErrDeviceCreationFailed = errors.New("device creation failed")

	// ErrGpuUploadFailed is returned if an image could not be turned into a texture.
	ErrGpuUploadFailed = errors.New("gpu upload failed")

	// ErrPresentationLost is returned if frames can no longer be presented,
	// for example after the device was removed.
	ErrPresentationLost = errors.New("presentation lost")
)
