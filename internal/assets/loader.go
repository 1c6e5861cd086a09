package assets

// AssetLoader loads stylesheets and templates by bare name.
// Implementations return ErrStyleNotFound or ErrTemplateNotFound for a
// missing asset and ErrInvalidAssetName for a name that is not a bare word.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kindLoader is implemented by the loaders of this package.
type kindLoader interface {
	load(k kind, name string) (string, error)
}
