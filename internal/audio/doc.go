// Package audio plays the optional hourly chime.
package audio
