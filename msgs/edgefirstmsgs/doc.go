// Package edgefirstmsgs holds edgefirst_msgs records: detections with
// tracking, segmentation masks, zero-copy DMA buffer descriptors and radar
// data cubes.
package edgefirstmsgs
