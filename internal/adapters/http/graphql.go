package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"display_name": &graphql.Field{Type: graphql.String},
			"address":      &graphql.Field{Type: graphql.String},
			"latitude":     &graphql.Field{Type: graphql.Float},
			"longitude":    &graphql.Field{Type: graphql.Float},
		},
	})

	maneuverType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Maneuver",
		Fields: graphql.Fields{
			"icon_class":  &graphql.Field{Type: graphql.String},
			"instruction": &graphql.Field{Type: graphql.String},
		},
	})

	routeSummaryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RouteSummary",
		Fields: graphql.Fields{
			"waypoint_labels":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"distance_meters":    &graphql.Field{Type: graphql.Int},
			"duration_formatted": &graphql.Field{Type: graphql.String},
			"maneuvers":          &graphql.Field{Type: graphql.NewList(maneuverType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"locations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Named locations, optionally without the selected origin",
				Args: graphql.FieldConfigArgument{
					"exclude": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					exclude, _ := p.Args["exclude"].(string)
					return deps.Locations.ListExcluding(p.Context, exclude)
				},
			},
			"location": &graphql.Field{
				Type:        locationType,
				Description: "Get a location by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.Get(p.Context, p.Args["id"].(string))
				},
			},
			"regions": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Geofence region keys",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Regions == nil {
						return []string{}, nil
					}
					return deps.Regions.Keys(), nil
				},
			},
			"routeSummary": &graphql.Field{
				Type:        routeSummaryType,
				Description: "Distance, duration and turn list between two locations",
				Args: graphql.FieldConfigArgument{
					"origin_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := domain.RouteRequest{
						Origin:      deps.Locations.Resolve(p.Context, p.Args["origin_id"].(string)),
						Destination: deps.Locations.Resolve(p.Context, p.Args["destination_id"].(string)),
						TravelMode:  deps.Session.Controller.TravelMode,
					}
					if !req.Valid() {
						return nil, nil
					}
					route, err := deps.Gateway.ComputeRoute(p.Context, req)
					if err != nil {
						return nil, err
					}
					return usecases.RoutePanel(route), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
