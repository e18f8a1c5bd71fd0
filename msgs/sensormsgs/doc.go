// Package sensormsgs holds sensor_msgs records: point clouds, images,
// camera calibration, satellite navigation fixes and inertial measurements.
//
// Byte payloads (PointCloud2.Data, Image.Data) are copied out of the source
// buffer on decode, so records stay valid after the buffer is reused.
package sensormsgs
