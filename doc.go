// Package flipbook is a raster frame-by-frame animation engine.
//
// A project is an ordered sequence of frames held by a [Store]. Every frame
// carries exactly three layers (background, middle, foreground) plus a cached
// opaque composite. Drawing happens through a [Session], which routes pointer
// input to the active layer via the tool set in its [DrawSettings], records
// one undo snapshot per completed stroke or fill, and keeps the composite
// fresh for playback, thumbnails and onion skinning.
//
// Beyond plain drawing the engine provides a scanline flood fill, a playback
// scheduler ([Player]), an onion-skin overlay, a procedural "melt" simulator
// ([Melt]) that derives in-between frames from a single source image, and an
// export boundary (PNG frame bytes, thumbnails, APNG animations).
//
// The engine is display-agnostic: it consumes pointer samples in buffer
// coordinates and produces pixel buffers. cmd/flipbook contains a small
// interactive shell built on ebiten that drives the engine through that
// boundary.
package flipbook
