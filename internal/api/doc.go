// package api implements the REST transport for the Trackflix backend.
//
// The [Client] issues the list/create/update/delete calls the store layer
// depends on, mapping every failure into a [TransportError]. Requests are
// rate limited, carry correlation IDs, and authenticate via OAuth2 client
// credentials when configured.
package api
