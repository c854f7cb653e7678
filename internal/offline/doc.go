// Package offline implements the offline cache controller: a versioned
// response cache in front of the app's origin.
//
// # Lifecycle
//
//   - Install fetches every manifest path from the origin and stores the
//     responses in the cache named "<app>-v<version>". Any failed fetch
//     aborts the install and nothing is written.
//   - Activate makes that cache current and deletes every other cache.
//   - RoundTrip serves requests from the current cache, falling back to the
//     origin and caching same-origin 200 GET responses it did not have.
//
// Register runs the three steps the way a browser registers a service
// worker: an already installed version is only activated; a failed install
// leaves the previous version serving.
//
// Server exposes the controller over HTTP with gin.
package offline
