package loader

import (
	"errors"
	"testing"
)

func TestPendingResolvesOnce(t *testing.T) {
	release := make(chan struct{})
	p := Go("answer", func() (int, error) {
		<-release
		return 42, nil
	})

	if _, ok, _ := p.Poll(); ok {
		t.Fatal("Poll reported a result before the load finished")
	}

	close(release)
	if v, err := p.Wait(); v != 42 || err != nil {
		t.Fatalf("Wait = (%d, %v), want (42, nil)", v, err)
	}

	v, ok, err := p.Poll()
	if !ok || v != 42 || err != nil {
		t.Errorf("first Poll after completion = (%d, %v, %v), want (42, true, nil)", v, ok, err)
	}
	if _, ok, _ := p.Poll(); ok {
		t.Error("second Poll should not deliver the result again")
	}
}

func TestPendingCarriesError(t *testing.T) {
	loadErr := errors.New("missing file")
	p := Go("broken", func() (*Asset, error) {
		return nil, loadErr
	})
	p.Wait()

	asset, ok, err := p.Poll()
	if !ok {
		t.Fatal("expected the failed load to be delivered")
	}
	if !errors.Is(err, loadErr) {
		t.Errorf("err = %v, want %v", err, loadErr)
	}
	if asset != nil {
		t.Errorf("asset = %v, want nil", asset)
	}
	if p.Source() != "broken" {
		t.Errorf("Source() = %q, want %q", p.Source(), "broken")
	}
}

func TestPendingRecoversPanic(t *testing.T) {
	p := Go("bad.glb", func() (*Asset, error) {
		panic("corrupt buffer")
	})
	if _, err := p.Wait(); err == nil {
		t.Error("expected the panic to surface as an error")
	}
}
