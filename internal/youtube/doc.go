// Package youtube wraps the subset of the YouTube Data API v3 that the
// harvester needs: channel details, uploads playlist walking, batched video
// details, and top-level comment threads.
//
// All requests are plain GETs authenticated with an API key query parameter,
// so only public data is reachable. Pagination follows nextPageToken; video
// details are batched 50 IDs per request per the API limit. Counts stay in
// their wire encoding (decimal strings) and are converted by the records
// package.
package youtube
