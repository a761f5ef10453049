package controllers

import (
	"net/http"

	"github.com/gobwas/ws"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Carbonetx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type plannerAPI struct {
	plannerService PlannerService
	hub            *Hub
	log            *zap.Logger
}

func New(plannerService PlannerService, hub *Hub, log *zap.Logger) *plannerAPI {
	return &plannerAPI{
		plannerService: plannerService,
		hub:            hub,
		log:            log,
	}
}

func (api *plannerAPI) Routes(group *helper.RouteGroup) {
	group.POST("/solve", api.solve)
	group.GET("/solve/stream", api.solveStream)
	group.GET("/solutions/:id", api.getSolution)
}

// solve godoc
//
//	@Summary		design a capture, transport and storage network
//	@Description	runs the greedy network design heuristic on the scenario and stores the solution
//	@Tags			planner
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	solveResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Router			/solve [post]
func (api *plannerAPI) solve(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request solveRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	id, sol, err := api.plannerService.Solve(r.Context(), request.Scenario, request.NumWorkers, nil)
	if err != nil {
		status := statusFor(err)
		if sol == nil || status != http.StatusUnprocessableEntity {
			api.getStatusCode(w, r, err)
			return
		}
		// infeasible, the partial network is still returned
		resp := errorEnvelope(status, err.Error())
		resp["data"] = NewSolveResponse(id, sol)
		if err := api.writeJSON(w, status, resp, nil); err != nil {
			api.ServerErrorResponse(w, r, err)
		}
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/api/solutions/"+id)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSolveResponse(id, sol)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// getSolution godoc
//
//	@Summary	stored solution
//	@Tags		planner
//	@Produce	json
//	@Param		id	path		string	true	"solution id"
//	@Success	200	{object}	solveResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/solutions/{id} [get]
func (api *plannerAPI) getSolution(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id := p.ByName("id")
	sol, err := api.plannerService.GetSolution(id)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSolveResponse(id, sol)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// solveStream godoc
//
//	@Summary		design a network and stream every iteration over a websocket
//	@Description	the client sends one solve request frame, the server answers with one frame per committed
//	@Description	source/sink pair and a final frame with the solution
//	@Tags			planner
//	@Router			/solve/stream [get]
func (api *plannerAPI) solveStream(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}

	api.log.Info("established websocket connection", zap.String("remote", r.RemoteAddr),
		zap.String("protocol", hs.Protocol))

	session := api.hub.Register(conn)
	defer api.hub.Remove(session)

	if err := session.Solve(r.Context()); err != nil {
		api.log.Error("error streaming solve", zap.Error(err))
	}
}
