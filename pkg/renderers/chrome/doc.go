// Package chrome prints the HTML print screen to PDF through a headless
// Chrome or Chromium instance. The browser starts on first use and is
// reused until Close.
package chrome
