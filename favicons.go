/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

// A single inline SVG keeps binary assets out of the tree.
const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">` +
	`<rect width="32" height="32" rx="6" fill="#1a1a2e"/>` +
	`<circle cx="11" cy="16" r="6" fill="#e94560"/>` +
	`<rect x="18" y="10" width="10" height="12" rx="2" fill="#f5f5f5"/>` +
	`</svg>`

func getFavicon() string {
	return `<link rel="icon" type="image/svg+xml" href="/favicon.svg">
	<meta name="theme-color" content="#1a1a2e">`
}

func serveFavicon(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("Expires", time.Now().Add(24*time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Content-Length", strconv.Itoa(len(faviconSVG)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(faviconSVG))
		if err != nil {
			errs <- err

			return
		}
	}
}
