package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter. There is exactly one
// Context per session, every other gpu resource is created from it.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

// New creates a Context rendering to the surface described by sd. Only hardware
// adapters are accepted, there is no software fallback.
func New(sd *wgpu.SurfaceDescriptor) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// create a Surface based on the window
	st.Surface = instance.CreateSurface(sd)

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: false,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("%w: request adapter: %w", ErrDeviceCreationFailed, err)
	}

	info := st.Adapter.GetInfo()

	slog.Info("Selected adapter",
		slog.String("name", info.Name),
		slog.String("backend", info.BackendType.String()),
		slog.String("type", info.AdapterType.String()),
	)

	if info.AdapterType == wgpu.AdapterTypeCPU {
		return st, fmt.Errorf("%w: adapter %q is not hardware accelerated", ErrDeviceCreationFailed, info.Name)
	}

	// get a Device with the default settings
	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("%w: request device: %w", ErrDeviceCreationFailed, err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

// Flush submits all writes staged on the queue and blocks until the
// device finished every piece of submitted work.
func (d *Context) Flush() {
	d.Queue.Submit()
	d.Device.Poll(true, nil)
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
