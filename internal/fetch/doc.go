// Package fetch paginates daily-bar downloads across arbitrary date
// ranges, assembling a continuous ascending series from bounded klines
// requests.
package fetch
