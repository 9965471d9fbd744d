//go:build tinygo && baremetal

package hal

type stubPresenter struct{}

func (stubPresenter) Init(cfg PanelConfig) error {
	_ = cfg
	return ErrNotImplemented
}

func (stubPresenter) Present(x, y, w, h int, pixels []byte) error {
	_, _, _, _, _ = x, y, w, h, pixels
	return ErrNotImplemented
}
