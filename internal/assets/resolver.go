package assets

import "errors"

// AssetResolver serves assets from a user directory and falls back to the
// embedded copy for anything that directory does not provide, so a user
// can override the print shell and keep the embedded mermaid host.
type AssetResolver struct {
	custom   kindLoader // nil without a custom directory
	embedded kindLoader
}

// NewAssetResolver creates a resolver. An empty customBasePath serves the
// embedded assets only; a non-empty one must be a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}
	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle loads a stylesheet, preferring the custom directory.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(styleKind, name)
}

// LoadTemplate loads a template, preferring the custom directory.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(templateKind, name)
}

func (r *AssetResolver) load(k kind, name string) (string, error) {
	if r.custom == nil {
		return r.embedded.load(k, name)
	}
	content, err := r.custom.load(k, name)
	// Invalid names and unreadable files are not papered over.
	if errors.Is(err, k.notFound) {
		return r.embedded.load(k, name)
	}
	return content, err
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
