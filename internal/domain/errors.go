package domain

import "errors"

// Sentinel errors for image retrieval
var (
	// ErrServerOffline indicates the media server is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrAuthFailed indicates authentication failed
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrImageNotFound indicates the server has no image at the URL
	ErrImageNotFound = errors.New("image not found")

	// ErrNotAnImage indicates the response body is not a decodable image
	ErrNotAnImage = errors.New("response is not an image")

	// ErrInvalidURL indicates the image URL is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid image URL")
)
